// Package router keeps the navigation history of a display.
//
// Screens are identified by small integers and materialised lazily through a
// registered factory. The router records each navigation on a fixed-depth
// stack together with the transition that was used, so that GoBack can play
// the inverse transition and reuse any screen that was kept alive.
//
// # Basic Usage
//
//	const (
//	    ScreenHome router.Screen = iota
//	    ScreenList
//	    ScreenDetail
//	)
//
//	r := router.New(tree, disp, router.Options{Depth: 8})
//
//	r.Register(ScreenHome, func(t *widget.Tree) widget.Handle {
//	    return buildHome(t)
//	}).Register(ScreenList, func(t *widget.Tree) widget.Handle {
//	    return buildList(t)
//	})
//
//	// The home screen collapses the history whenever it is reached.
//	r.SetHome(ScreenHome, true)
//
//	r.Load(router.LoadParams{Screen: ScreenHome})
//	r.Load(router.LoadParams{
//	    Screen:     ScreenList,
//	    Transition: display.Transition{Type: display.MoveRight, Duration: 300 * time.Millisecond},
//	})
//
//	// Slides back to the home screen with MoveLeft.
//	r.GoBack(1)
//
// # Screen Lifetime
//
// A LoadParams with DestroyPrev set hands the outgoing screen to the widget
// tree's deferred collector once it is off the panel. Without it the outgoing
// screen is remembered on the new stack entry and reused on the way back.
// A home screen registered with aliveForever is created once and never
// destroyed.
package router
