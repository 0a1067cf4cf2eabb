// Package feed reads Avro article batches and keeps a drop directory
// under continuous watch.
//
// ReadRecords decodes one Avro object container file into raw records
// for the ingestion pipeline. Watcher monitors a directory, ingests
// batch files as they appear, and consults the feed ledger so a file
// is only processed once across restarts.
package feed
