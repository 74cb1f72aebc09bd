// Package flock provides cross-platform file locking utilities.
//
// The session store uses these locks to keep concurrent baton processes from
// interleaving writes to the same session record. It provides exclusive,
// non-blocking file locks that work on both Unix and Windows systems.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
