// Package filesystem provides directory traversal and tree fingerprinting
// for synthesized project trees.
//
// # Overview
//
//   - Directory traversal that skips install/build output (node_modules, .git, .next)
//   - Sorted file listings relative to a root
//   - Content fingerprints used to prove two synthesis runs produced the same tree
//
// # Usage
//
// Fingerprint an output tree:
//
//	fp, err := filesystem.Fingerprint("./web", filesystem.WalkOptions{IncludeHidden: true})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(fp.Digest)
//
// Compare two trees:
//
//	changed := filesystem.CompareFingerprints(before, after)
package filesystem
