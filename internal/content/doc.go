// Package content defines the page model shared by the section pipeline:
// documents, the closed set of section variants, posts and image references.
//
// Raw CMS JSON is parsed once, at the content store boundary, by
// DecodeDocument and DecodePosts. Decoding is lenient: malformed optional
// fields become zero values and list elements that cannot be decoded are
// dropped. Section records whose tag is not one of the known variants decode
// to *UnknownSection so callers can skip them.
package content
