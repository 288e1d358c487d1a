// Package events defines the in-process event contract between the service
// layer and the background task runner. Services emit TaskRequestEvents after
// commit; the runner's handler turns them into queued tasks.
package events
