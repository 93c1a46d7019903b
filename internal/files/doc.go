// Package files groups the source-side stages of an ingestion run.
//
// Sub-packages:
//   - filesystem: filesystem abstraction (OS and in-memory)
//   - locator: turns a path into the ordered list of source files
//   - decoder: reads one delimited file into an in-memory table
//
// # Usage
//
//	fsys := filesystem.NewOSFileSystem()
//	files, err := locator.New(fsys).Locate("./data")
//	table, err := decoder.New(fsys).Decode(ctx, files[0])
package files
