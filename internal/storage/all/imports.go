// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their repository factories and DDL bootstrappers with the storage package.
//
// Backends made available:
//
//   - "postgres" (odptload/internal/storage/postgres)
//   - "sqlite"   (odptload/internal/storage/sqlite)
package all

import (
	_ "odptload/internal/storage/postgres"
	_ "odptload/internal/storage/sqlite"
)
