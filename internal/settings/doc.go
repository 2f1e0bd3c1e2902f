// Package settings defines the user-facing settings of the container-use
// context server, generates their JSON Schema by reflection, and validates
// raw settings payloads against that schema.
package settings
