// Package storage keeps an on-disk copy of method results.
//
// Each run writes its envelope to <dir>/<username>_<method>.json through a
// temporary file and a rename, so a reader never sees a partial file and
// a later run for the same pair replaces the earlier one.
//
//	manager, err := storage.NewManager("results")
//	if err != nil {
//	    return err
//	}
//	path, err := manager.SaveEnvelope("natgeo", env)
package storage
