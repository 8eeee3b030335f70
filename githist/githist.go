// Package githist turns a git commit graph into a linear, foldable
// sequence of display rows. First-parent history is walked lazily;
// merge commits can be unfolded to reveal the commits their branch
// brought in, down to the fork point where the branch split off the
// mainline. Fork points are computed asynchronously by a Resolver so
// consumers never block on graph searches.
package githist
