// Package devreload reloads open browser tabs when source files change.
//
// Server holds the websocket connections opened by ClientScript and Watcher
// reports debounced fsnotify events. Watch connects the two:
//
//	srv := devreload.NewServer(devreload.WithLogger(log))
//	go devreload.Watch(ctx, srv, devreload.WatcherConfig{Paths: []string{"web/src"}})
//	router.Mount(devreload.MountPath, srv.Routes())
//
// Nothing here is meant to run in production.
package devreload
