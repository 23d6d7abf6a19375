// Package params holds the render parameters exchanged through the
// blackboard: the agreed-upon key names, a Publisher used by the control
// surface, and ReadFrame used by the renderer once per frame.
//
// The two sides share nothing but the key constants in this package.
package params
