package game

// Page names a screen. The settings record remembers which page to return to.
type Page string

const (
	PageStart          Page = "StartGamePage"
	PageRoom1Wall1     Page = "Room1Wall1"
	PageRoom1Wall2     Page = "Room1Wall2"
	PageRoom1Wall3     Page = "Room1Wall3"
	PageRoom1Wall4     Page = "Room1Wall4"
	PageBoxRiddle      Page = "BoxRiddle"
	PageCabinetRiddle  Page = "CabinettLeftRiddle"
	PageComputerHint   Page = "ComputerHintPage"
	PageComputerPuzzle Page = "ComputerPuzzle"
	PageLightSwitch    Page = "LightSwitchPage"
	PageMoveBooks      Page = "MoveBooksPuzzle"
	PagePuzzlePieces   Page = "PuzzlePiecesSlove"
	PageScale          Page = "ScalePage"
	PageSettings       Page = "SettingPage"
)
