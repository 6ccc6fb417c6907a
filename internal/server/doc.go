// Package server exposes the generation pipeline over HTTP.
//
// Routes:
//
//	POST /generate   definition JSON in, mesh out (?format=json|obj|svg)
//	GET  /healthz    liveness, including the history database when set
//	GET  /metrics    Prometheus exposition, when a metrics handler is set
//
// A /generate body carries the same optional fields as a preset file;
// missing fields take the defaults of the reference plant:
//
//	{"axiom": "F", "rules": "F -> F[+F]F", "iterations": 4}
package server
