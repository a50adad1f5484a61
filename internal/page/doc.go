// Package page assembles page documents into ordered render lists.
//
// An Assembler builds the query for a document type, executes it on a
// ContentStore, dispatches every section through the section registry and
// derives page metadata. Unknown section tags are skipped and reported;
// the first transformer failure aborts the page.
package page
