/*
Package corpus provides a SQLite-backed library of training corpora and a
log of sentences generated from them.

Models themselves are never persisted; they are cheap to rebuild from a
stored corpus. The store keeps the raw normalized-ready text, per-corpus
metadata, and generated samples for later inspection.
*/
package corpus
