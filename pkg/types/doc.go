// Package types defines the Cupboard and Table interfaces, the dish and
// restaurant entities, backend configuration, and the error vocabulary shared
// by the carta storage backends and the catalog services.
//
// Entities are plain structs. Backends hydrate them on Get and Fetch and
// dehydrate them on Set; callers type-assert the values returned as any.
package types
