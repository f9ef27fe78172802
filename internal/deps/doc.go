// Package deps verifies availability of the external binaries hevcpress
// drives. A missing required binary is a configuration problem for the whole
// run, so these checks happen before any file is touched.
package deps
