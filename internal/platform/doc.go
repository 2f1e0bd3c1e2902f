// Package platform provides the OS-dependent pieces of binary discovery:
// regular-file checks that follow symlinks, the name of the system's
// "locate executable" command, and permission management. Windows differs
// in the lookup command (where instead of which) and in ignoring chmod.
package platform
