/*
Package domain contains the core data structures of the skillet engine.

The central type is State, the shared record that workflow steps read and
update. Steps never mutate the record directly; they return an Update (a
partial record keyed by field name) that the executor merges with field-level
overwrite semantics.

Error payloads are textual: a field value containing the ErrorMarker
substring is an error result. This keeps failures inspectable by routing
logic as ordinary field values.
*/
package domain
