/*
Package ports defines the driven ports (interfaces) for the skillet engine.

These interfaces decouple the workflow steps from external implementations:

  - Completer: the hosted text-completion service.
  - Prompter: the user-interaction surface (terminal, HTTP, MCP, scripted).
  - FavoriteStore: optional durable storage for saved recipes.
*/
package ports
