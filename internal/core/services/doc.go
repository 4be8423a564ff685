// Package services implements the use-case layer of the generation
// pipeline: structure planning, outline selection, placeholder content
// generation and render-plan binding. Services depend only on domain types
// and driven ports, so every collaborator can be swapped or mocked.
package services
