// Package journal persists batch run history in SQLite.
//
// The journal is observational: skip decisions during a batch come from
// output-file existence, never from journal state, so deleting the database
// is always safe. Its purpose is the `hevcpress history` command and
// postmortem queries after unattended runs.
package journal
