// Package http contains the chi HTTP handlers exposing the dashboard
// pipelines: snapshot recomputation, dataset metadata, CSV export and
// health reporting. Handlers translate query parameters into immutable
// filter configurations and return RFC 7807 problems on failure.
package http
