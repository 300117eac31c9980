// Package bookhound aggregates book availability from independently
// operated public library catalog websites behind one uniform query
// surface: list the known libraries, and search a keyword across a chosen
// subset of them, streaming normalized results as they arrive.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. http/,
// redis/, kakao/); the shared site-adapter template lives in jnet/ and
// the concurrent front door in aggregate/.
package bookhound
