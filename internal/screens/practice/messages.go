package practice

// ChangedMsg tells the screen that the coordinator state moved on outside
// of a key press: a transcript arrived, a capture ended or the advance
// timer fired.
type ChangedMsg struct{}
