// Package gesture turns pointer events in display space into point edits on
// a gradient mesh session.
//
// A Machine tracks one gesture at a time:
//
//	Idle -> DraggingPoint        primary press on a marker
//	Idle -> DraggingColorHandle  press inside the open picker's hue strip
//	* -> Idle                    release of the pointer that started it
//
// A press on a marker only becomes a drag once the pointer travels more than
// DragThreshold pixels on either axis; releasing before that opens the hue
// picker for the point. A tap on empty canvas adds a point, or closes the
// picker if one is open. The secondary button removes the marker under the
// pointer.
package gesture
