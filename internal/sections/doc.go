// Package sections maps decoded CMS section records onto the prop shapes
// their renderers expect.
//
// The Registry is a closed, immutable table from section tag to renderer
// component name and transformer. Transformers are pure: they never mutate
// their input, never perform I/O and never fail on field-level defects.
// Missing text becomes "", missing links and images become nil, and missing
// lists become empty slices. Nested items lacking their identity fields are
// dropped in order.
//
// The blog section is the only variant with an effectful transform. When a
// blog section asks for every post, callers must use the entry's
// TransformWithFetch, which reads posts through a PostLookup.
package sections
