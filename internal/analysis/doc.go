// Package analysis turns a catalog snapshot into the aggregate structures each
// dashboard view renders: value explosion, grouped counts and means, time series,
// the genre membership matrix with its 2-D projection, and the genre
// co-occurrence graph.
//
// Every function is pure: it reads a *catalog.Table and returns new values.
package analysis
