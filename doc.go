// Package xmlparts persists values inside an Office document's custom XML
// part storage, keyed by a string.
//
// # Overview
//
// xmlparts stores one custom XML part per key. A key is reduced to a
// namespace (non-alphanumerics become underscores, result lower-cased), the
// value is serialized to an XML fragment, wrapped in
// <customData xmlns="{namespace}">...</customData>, and handed to the host
// document for storage. Reading reverses the process. The namespace is the
// only storage address: keys differing in case or punctuation share a part.
//
// # Architecture
//
// The package consists of three abstractions:
//
// 1. Store[TKey]: key-addressed set/get/remove operations
// 2. Host: the document's part storage backend
// 3. Codec: generic value <-> XML conversion
//
// Host and Codec are injected capabilities; the store is a thin
// orchestration layer with no storage or serialization logic of its own.
//
// # Quick Start
//
//	store := xmlparts.New[string]()
//	ctx := context.Background()
//
//	store.Set(ctx, "My Key!", map[string]any{"a": 1})
//	v, _ := store.GetValue(ctx, "my key!") // same namespace: my_key_
//	store.Remove(ctx, "MY KEY?")
//
// # Document Backends
//
// The default host keeps parts in memory. OpenDocx loads a real .docx
// package, with parts stored as customXml/itemN.xml entries:
//
//	host, _ := xmlparts.OpenDocx("report.docx")
//	store := xmlparts.New[string](xmlparts.WithHost[string](host))
//	store.Set(ctx, "invoice", map[string]any{"total": 42})
//	host.Save("report.docx")
//
// Any backend implementing the Host interface can be plugged in via
// WithHost.
//
// # Type-Safe Keys
//
// Use custom types for compile-time key validation:
//
//	type SettingKey string
//
//	settings := xmlparts.New[SettingKey](xmlparts.WithHost[SettingKey](host))
//	settings.Set(ctx, SettingKey("theme"), map[string]any{"dark": true})
//
// # Error Handling
//
// The package defines sentinel errors for common cases:
//
//	_, err := store.GetValue(ctx, "")
//	if errors.Is(err, xmlparts.ErrInvalidKey) {
//	    // Handle bad key
//	}
//
// Available errors: ErrInvalidKey, ErrMultipleParts, ErrHost. The latter two
// also surface as *MultiplePartsError and *HostError for errors.As.
//
// A missing key is not an error: GetPart and GetValue return nil, and Remove
// is a no-op success.
//
// # Concurrency
//
// Operations on different keys are independent. The store performs no
// per-key locking: two overlapping Set calls for the same key can each
// observe "no existing part" and both add one, after which every lookup for
// that namespace fails with ErrMultipleParts. Callers needing the
// one-part-per-namespace invariant under concurrent writers must serialize
// Set calls per key themselves.
//
// # Value Fidelity
//
// XML carries no scalar types, so values round-trip as strings:
// Set(ctx, k, map[string]any{"a": 1}) followed by GetValue(ctx, k) yields
// map[string]any{"a": "1"}.
package xmlparts
