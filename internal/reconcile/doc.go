// Package reconcile turns the flat list of sensor descriptors sent with a box
// update into create, update and delete operations and applies them in order.
//
// A descriptor carries three independent flags (deleted, edited, new). Classify
// is the only place those flags are interpreted:
//
//	deleted                  -> delete (other flags ignored), needs _id
//	edited && new            -> create, needs title, unit and sensorType
//	edited && !new           -> sparse update, needs _id
//	anything else            -> rejected
//
// ClassifyAll runs over the whole batch before anything touches the store, so one
// bad descriptor rejects the request with no statement executed. Apply then runs
// the changes strictly in submitted order and stops at the first failure; the
// caller's transaction turns that into an all-or-nothing result.
package reconcile
