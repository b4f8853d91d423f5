// Package log wraps zerolog with structured dumps of a World's archetypes and entities.
package log
