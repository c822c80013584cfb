// Package artifact defines what feature builders contribute to a project:
// files, tasks, dependencies and package.json fields, each addressed by a
// (kind, name) key. Builders return Contributions; the engine records them
// in a Registry together with the contributing builder's id.
package artifact
