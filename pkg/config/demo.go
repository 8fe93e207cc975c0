package config

// Demo returns a small built-in scene: a snowman on a floor under a sky
// gradient, lit by an ambient light and a point light up and to the left.
func Demo() Config {
	return Config{
		Width:    512,
		Height:   512,
		FOV:      60,
		Gradient: &GradientConfig{Top: RGB{0.25, 0.45, 0.8}, Bottom: RGB{0.85, 0.9, 1}},
		Materials: map[string]MaterialConfig{
			"snow":  {Diffuse: RGB{0.95, 0.95, 0.95}, Spec: 16},
			"coal":  {Diffuse: RGB{0.1, 0.1, 0.1}, Spec: 64},
			"floor": {Diffuse: RGB{0.4, 0.55, 0.4}, Spec: 4},
		},
		Objects: []ObjectConfig{
			{Type: "sphere", Material: "snow", Center: Vec{0, -1.5, -10}, Radius: 1.5},
			{Type: "sphere", Material: "snow", Center: Vec{0, 0.6, -10}, Radius: 1.1},
			{Type: "sphere", Material: "snow", Center: Vec{0, 2.1, -10}, Radius: 0.75},
			{Type: "sphere", Material: "coal", Center: Vec{0, 0.6, -8.9}, Radius: 0.15},
			{Type: "plane", Material: "floor", Point: Vec{0, -3, 0}, Normal: Vec{0, 1, 0}},
		},
		Ambient: &AmbientConfig{Color: RGB{1, 1, 1}, Strength: 0.15},
		Point:   &PointConfig{Position: Vec{-6, 8, 2}, Color: RGB{1, 1, 1}, Intensity: 1},
	}
}
