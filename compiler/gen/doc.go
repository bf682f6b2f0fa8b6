// Package gen is the karst compiler core: it turns loaded model
// declarations into an entity graph and generates the runtime support
// code from it.
//
// # Architecture
//
// The pipeline follows this flow:
//
//	Model declarations (//karst: markers, struct tags)
//	        ↓
//	   load.Class (syntactic model, dialect-merged)
//	        ↓
//	   EntityDescriptor (resolved properties, merged supertypes)
//	        ↓
//	   Graph (descriptors + relationship edges)
//	        ↓
//	   Validate (diagnostics, never panics)
//	        ↓
//	   Emitter (generated entity, metadata, registry files)
//
// # Key Types
//
//   - Processor: Orchestrates the whole run and collects diagnostics
//   - EntityDescriptor: One model type with its resolved properties
//   - PropertyDescriptor: One persistable property
//   - Graph: All descriptors plus the relationship edges between them
//   - Config: Global configuration for a run
//
// # Error Handling
//
// Recoverable findings are reported as Diagnostics and never abort the
// run; one malformed declaration is marked invalid and skipped while
// the rest of the batch completes. Structured error types cover the
// fatal cases:
//
//   - ModelError: Model declaration errors
//   - ConfigError: Configuration errors
//   - RelationshipError: Relationship findings under strict processing
//   - GenerationError: Code generation errors
//   - ValidationError: Validation failures under strict processing
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	config, err := gen.NewConfig(
//	    gen.WithTarget("./model"),
//	    gen.WithHeader("// Custom header"),
//	)
//
// # Jennifer Emitter
//
// Code generation uses the Jennifer library instead of templates for
// auto-tracked imports, streaming writes, and parallel emission with
// configurable workers.
package gen
