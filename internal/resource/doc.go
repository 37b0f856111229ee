// Package resource resolves logical resource kinds to directories under a
// data root and validates what those directories hold.
//
// A Kind contributes only two things: the path segments of its directory
// relative to the root, and a Policy naming the file extensions the directory
// may contain. Everything else (listing, contamination checks, lookup by file
// name, reading) is done by a Locator, so a new kind of resource is added by
// writing a new Kind, never by changing the Locator.
//
// # Directory layout
//
//	<root>/raw_data/<data_kind>/<region>/<series_id>.csv
//	<root>/raw_data/<data_kind>/<region>/<series_id>.meta
//	<root>/transformed_data/<data_kind>/<region>/<series_id>.csv
//	<root>/specs/*.keytree
//	<root>/pid_graphics/css/style.css
//	<root>/pid_graphics/js/*.js
//	<root>/pid_graphics/favicon/favicon.png
//	<root>/ts_graphics/spec/*.keytree
//	<root>/ts_graphics/js/*.js
//
// Directories are never created. Every query reads the filesystem again;
// nothing is cached, because the filesystem is what drift is measured against.
package resource
