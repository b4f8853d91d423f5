// Package storage is the columnar store behind a World: archetypes holding one packed column per component
// type, the registry that finds archetypes by signature, and the map from entity index to row.
package storage
