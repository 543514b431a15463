package data

// Placement places an object or wall object at a world tile.
// Direction is the 8-way rotation for objects and the wall orientation
// for wall objects.
type Placement struct {
	ID        int `yaml:"id"`
	X         int `yaml:"x"`
	Y         int `yaml:"y"`
	Z         int `yaml:"z"`
	Direction int `yaml:"direction"`
}

// Placements groups the object and wall object placements of a world.
type Placements struct {
	Objects     []Placement `yaml:"objects"`
	WallObjects []Placement `yaml:"wall_objects"`
}
