package constants

// Background color (#202123)
const (
	BackgroundR = 0x20
	BackgroundG = 0x21
	BackgroundB = 0x23
)

// Floor
const (
	FloorY       = -10.0
	FloorSize    = 100.0
	FloorTiles   = 6
	FloorSamples = 48
)

// Greeting text line heights
const (
	TextLine1Y = 25.5
	TextLine2Y = 15.5
	TextLine3Y = 5.5
)

// Greeting defaults
const (
	GreetingLine1 = "WISH YOU"
	GreetingLine2 = "HAPPY BIRTHDAY"
	GreetingName  = "Abhay Singh"
	TextColor     = "#ffa500"
)

// Props
const (
	TableX, TableY, TableZ = 0.0, -10.0, 30.0
	CakeX, CakeY, CakeZ    = 0.0, -4.0, 30.0
)

// Lighting
const (
	AmbientIntensity     = 0.7
	KeyLightIntensity    = 1.0
	BackLightIntensity   = 0.5
	DirectionalLightDist = 10.0
)
