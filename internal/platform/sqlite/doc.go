// Package sqlite provides the SQLite implementation of the task storage
// interfaces defined in internal/store, backed by the pure-Go modernc.org/sqlite
// driver. It is used by the local CLI, the MCP server and the test suite.
package sqlite
