// Package links implements the link reconciler: given an ordered list of
// mappings it brings the destination tree into the declared state.
//
// Three operations are provided:
//
//   - Install creates destination symlinks pointing at resolved sources,
//     prompting before overwriting anything that already occupies a
//     destination unless force is set. Dry runs print the same notices
//     without touching the filesystem.
//   - Remove deletes destinations that are exactly the symlink a mapping
//     would have created, and leaves everything else alone.
//   - List prints the mappings whose destination is currently installed.
//
// Mappings are processed sequentially in order. Missing sources, declined
// overwrites and foreign destinations are soft skips: they print a notice and
// processing continues. Path expansion failures and failed mutations (remove,
// mkdir, symlink) abort the operation and are returned together with the
// results gathered so far.
//
// Remove and List share a single predicate, IsActualLink, so a mapping is
// listed as installed if and only if Remove would delete it.
package links
