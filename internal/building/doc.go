// Package building holds the design configuration for a steel building and
// the store through which it is mutated.
//
// The configuration is a plain value (Config) that the geometry packages
// consume read-only. All changes go through the named operations on Store,
// each of which replaces one whole sub-object, bumps the revision and
// notifies subscribers.
//
// # Architecture
//
//	┌───────────────────────────────────────────────────────────┐
//	│                      building.Store                        │
//	│                                                            │
//	│  ┌──────────────┐   ┌──────────────┐   ┌──────────────┐   │
//	│  │    Store     │   │  Validation  │   │  Repository  │   │
//	│  │  (store.go)  │──▶│(validation.go│   │(repository.go│   │
//	│  │              │   │              │   │              │   │
//	│  │ • mutations  │   │ • ranges     │   │ • saved      │   │
//	│  │ • revisions  │   │ • enums      │   │   designs    │   │
//	│  │ • listeners  │   │ • clamping   │   │ • SQLite     │   │
//	│  └──────────────┘   └──────────────┘   └──────────────┘   │
//	└───────────────────────────────────────────────────────────┘
//
// # Validation
//
// Out-of-range numbers and unknown enum values are rejected with sentinel
// errors. Opening position and window bottom offset are clamped instead.
// Lean-to cuts that consume the whole span are accepted.
//
// # Usage
//
//	store := building.NewStore(building.Default())
//	store.SetLogger(log)
//	store.Subscribe(func(c building.Change) { ... })
//
//	if err := store.SetDimensions(building.Dimensions{Width: 40, Length: 60, EaveHeight: 14}); err != nil {
//	    return err
//	}
//	snap := store.Snapshot()
package building
