// Package hpa implements the hierarchical pathfinder: cluster
// decomposition, portal detection, intra- and inter-cluster abstract
// edges, and a two-stage (local + abstract) point-to-point query.
package hpa

import "github.com/arl/crowdcore"

// GridPos is an integer grid coordinate.
type GridPos struct{ X, Y int }

func (p GridPos) manhattan(o GridPos) int {
	return absInt(p.X-o.X) + absInt(p.Y-o.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ClusterCoord identifies a cluster by its row-major tile coordinate. A
// 2D-integer key is used, not the reference implementation's string
// keys: it sorts and hashes deterministically without string formatting
// overhead, and serializes to a canonical (X, Y) pair on its own.
type ClusterCoord struct{ X, Y int }

// bounds is the inclusive grid-cell bounding box of one cluster. Edge
// clusters are truncated at the grid border.
type bounds struct{ minX, minY, maxX, maxY int }

func (b bounds) contains(p GridPos) bool {
	return p.X >= b.minX && p.X <= b.maxX && p.Y >= b.minY && p.Y <= b.maxY
}

// clusterCoordOf returns the cluster coordinate owning grid cell p.
func clusterCoordOf(p GridPos, clusterSize int) ClusterCoord {
	return ClusterCoord{X: p.X / clusterSize, Y: p.Y / clusterSize}
}

// clusterBounds returns the bounding box of cluster c on a grid-map of
// the given dimensions.
func clusterBounds(c ClusterCoord, clusterSize int, grid *crowdcore.GridMap) bounds {
	minX := c.X * clusterSize
	minY := c.Y * clusterSize
	maxX := minX + clusterSize - 1
	if maxX > grid.Width-1 {
		maxX = grid.Width - 1
	}
	maxY := minY + clusterSize - 1
	if maxY > grid.Height-1 {
		maxY = grid.Height - 1
	}
	return bounds{minX: minX, minY: minY, maxX: maxX, maxY: maxY}
}

// numClusters returns the number of clusters tiling one grid dimension of
// length dim with the given cluster size (called once for columns, once
// for rows).
func numClusters(dim, clusterSize int) int {
	return (dim + clusterSize - 1) / clusterSize
}
