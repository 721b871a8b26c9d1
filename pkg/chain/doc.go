/*
Package chain builds in-memory Markov chain models from plain text and
synthesizes new sentences by pseudo-random traversal of those models.

A model is built once from a corpus string and an order (the number of
consecutive words forming one state), is immutable afterwards, and is safe
for concurrent generation. Three interchangeable state representations are
provided behind the same Chain contract: copied phrase strings, copied word
slices, and zero-copy offset spans into a single owned corpus buffer. All
three produce identical output for identical corpora and random sources.
*/
package chain
