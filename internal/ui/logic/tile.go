package logic

// Gesture is a user interaction with a single gallery tile
type Gesture int

const (
	GestureActivate  Gesture = iota // enter, space, click
	GestureRange                    // shift+arrow, V
	GestureLongPress                // v, secondary trigger
)

// TileAction is what a gesture resolves to given the select mode
type TileAction int

const (
	TileNone TileAction = iota
	TileOpenViewer
	TileToggle
	TileRange
	TileEnterSelectAndToggle
)

// RouteTile maps a tile gesture to its action
func RouteTile(selectMode bool, g Gesture) TileAction {
	switch g {
	case GestureActivate:
		if selectMode {
			return TileToggle
		}
		return TileOpenViewer
	case GestureRange:
		if selectMode {
			return TileRange
		}
	case GestureLongPress:
		if selectMode {
			return TileToggle
		}
		return TileEnterSelectAndToggle
	}
	return TileNone
}
