// Package lvpart finds the minimum-variance split of an ordered, labeled
// weight sequence into K contiguous groups.
//
// 🚀 What is lvpart?
//
//	An exhaustive, deterministic partition search plus the plumbing to run it:
//		• partition: cut-tuple enumeration, group statistics, tie detection, Solve
//		• builder:   reproducible synthetic item sequences (uniform, normal, pulse…)
//		• cmd/lvpart: CLI with solve, serve, generate and count
//		• internal/: config (viper), logging (zerolog), dataset I/O (JSON/CSV),
//		             async jobs, HTTP API (gorilla/mux) and Prometheus metrics
//
// Under the hood:
//
//	partition/        - Solve, Search, Enumerator, GroupSums, Variance, Materialize
//	builder/          - BuildItems, BuildPulseItems, label schemes, weight distributions
//	internal/config   - defaults → file → LVPART_* environment
//	internal/dataset  - {"weights":[…],"labels":[…]} and label,weight CSV
//	internal/jobs     - in-memory job manager with cancellation and TTL
//	internal/server   - /api/v1 partitions, jobs, health, metrics
//	internal/metrics  - searches, combinations, durations, HTTP traffic
//
// Quick example:
//
//	weights  4  4 | 4  4      K = 2, C(3,1) = 3 tuples scored
//	labels   a  b | c  d      best cuts [1], sums [8 8], variance 0
//
//	go get github.com/katalvlaran/lvpart/partition
package lvpart
