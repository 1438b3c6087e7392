// Package widgets provides the lazy-rendering widgets and the small set of
// leaf widgets they render.
//
// LazySection chooses between a placeholder and real content from loading
// flags supplied by the caller. It does not watch the viewport. Pair it with
// VisibilityDetector and start the fetch from OnVisibilityChanged:
//
//	widgets.VisibilityDetector{
//	    Config:              visibility.DefaultConfig(),
//	    Target:              node,
//	    Watchers:            viewport,
//	    Scheduler:           idle,
//	    OnVisibilityChanged: func(visible bool) { if visible { fetch.Start() } },
//	    Child: widgets.LazySection{
//	        IsLoading: fetch.Loading(),
//	        IsLoaded:  fetch.Loaded(),
//	        MinHeight: 320,
//	        Child:     content,
//	    },
//	}
//
// Widgets use struct literals; all fields are optional unless documented.
package widgets
