package topology

// ClusterParams describes one sub-cloud of a clustering diagram.
type ClusterParams struct {
	Center Vec3    `yaml:"center" toml:"center"`
	Radius float32 `yaml:"radius" toml:"radius" validate:"gte=0"`
	Count  int     `yaml:"count" toml:"count" validate:"gte=0,lte=10000"`
	Color  string  `yaml:"color" toml:"color"`
}

// Params controls layout for every archetype. Only the fields relevant to the archetype
// being built are read; zero fields are replaced by DefaultParams for that archetype.
// Fields where zero is a meaningful value (Top, Slope, Intercept, Noise) are pointers and
// only nil takes the default.
type Params struct {
	Name      string    `yaml:"name" toml:"name"`
	Placement Placement `yaml:"placement" toml:"placement"`
	Color     string    `yaml:"color,omitempty" toml:"color,omitempty"`
	Seed      int64     `yaml:"seed,omitempty" toml:"seed,omitempty"`

	// neural-network
	LayerSizes   []int   `yaml:"layer_sizes,omitempty" toml:"layer_sizes,omitempty" validate:"max=16,dive,gte=0,lte=64"`
	LayerSpacing float32 `yaml:"layer_spacing,omitempty" toml:"layer_spacing,omitempty"`
	NodeSpacing  float32 `yaml:"node_spacing,omitempty" toml:"node_spacing,omitempty"`

	// decision-tree; Top is shared with transformer as the Y of the first row.
	Depth          int      `yaml:"depth,omitempty" toml:"depth,omitempty" validate:"gte=0,lte=8"`
	Branching      int      `yaml:"branching,omitempty" toml:"branching,omitempty" validate:"gte=0,lte=4"`
	LeafLimit      int      `yaml:"leaf_limit,omitempty" toml:"leaf_limit,omitempty" validate:"gte=0"`
	LevelSpacing   float32  `yaml:"level_spacing,omitempty" toml:"level_spacing,omitempty"`
	SiblingSpacing float32  `yaml:"sibling_spacing,omitempty" toml:"sibling_spacing,omitempty"`
	Top            *float32 `yaml:"top,omitempty" toml:"top,omitempty"`

	// transformer
	Blocks       []int   `yaml:"blocks,omitempty" toml:"blocks,omitempty" validate:"max=16,dive,gte=0,lte=64"`
	BlockSpacing float32 `yaml:"block_spacing,omitempty" toml:"block_spacing,omitempty"`

	// linear-regression
	PointCount   int      `yaml:"point_count,omitempty" toml:"point_count,omitempty" validate:"gte=0,lte=10000"`
	XMin         float32  `yaml:"x_min,omitempty" toml:"x_min,omitempty"`
	XMax         float32  `yaml:"x_max,omitempty" toml:"x_max,omitempty"`
	Slope        *float32 `yaml:"slope,omitempty" toml:"slope,omitempty"`
	Intercept    *float32 `yaml:"intercept,omitempty" toml:"intercept,omitempty"`
	Noise        *float32 `yaml:"noise,omitempty" toml:"noise,omitempty"`
	LineOverhang float32  `yaml:"line_overhang,omitempty" toml:"line_overhang,omitempty"`

	// sigmoid
	SampleRange float32 `yaml:"sample_range,omitempty" toml:"sample_range,omitempty" validate:"gte=0,lte=100"`
	SampleStep  float32 `yaml:"sample_step,omitempty" toml:"sample_step,omitempty" validate:"omitempty,gte=0.001"`

	// clustering
	Clusters []ClusterParams `yaml:"clusters,omitempty" toml:"clusters,omitempty" validate:"max=16,dive"`

	// particle-shell
	Count     int     `yaml:"count,omitempty" toml:"count,omitempty" validate:"gte=0,lte=10000"`
	MinRadius float32 `yaml:"min_radius,omitempty" toml:"min_radius,omitempty"`
	MaxRadius float32 `yaml:"max_radius,omitempty" toml:"max_radius,omitempty"`
}

// DefaultParams returns the stock layout for an archetype. Unknown archetypes get a
// zero Params with unit scale.
func DefaultParams(a Archetype) Params {
	p := Params{Name: string(a), Placement: Placement{Scale: 1}}
	switch a {
	case NeuralNetwork:
		p.Color = "#4a9eff"
		p.LayerSizes = []int{4, 6, 6, 4}
		p.LayerSpacing = 2
		p.NodeSpacing = 1.2
	case DecisionTree:
		p.Color = "#4aff9e"
		p.Depth = 3
		p.Branching = 2
		p.LeafLimit = 7
		p.LevelSpacing = 1.5
		p.SiblingSpacing = 1
		p.Top = Float(2)
	case Transformer:
		p.Color = "#ff9e4a"
		p.Blocks = []int{1, 3, 3, 1}
		p.BlockSpacing = 1.5
		p.LevelSpacing = 1.5
		p.Top = Float(2.5)
	case LinearRegression:
		p.Color = "#ff4a9e"
		p.PointCount = 20
		p.XMin, p.XMax = -2, 2
		p.Slope = Float(0.8)
		p.Intercept = Float(0.5)
		p.Noise = Float(1)
		p.LineOverhang = 0.5
	case Sigmoid:
		p.Color = "#9e4aff"
		p.SampleRange = 5
		p.SampleStep = 0.1
	case Clustering:
		p.Color = "#ffffff"
		p.Clusters = []ClusterParams{
			{Center: Vec3{-1.5, 1, 0}, Radius: 0.8, Count: 50, Color: "#ff6b6b"},
			{Center: Vec3{1.5, 1, 0}, Radius: 0.8, Count: 50, Color: "#4ecdc4"},
			{Center: Vec3{0, -1.5, 0}, Radius: 0.8, Count: 50, Color: "#ffbe0b"},
		}
	case ParticleShell:
		p.Color = "#4040ff"
		p.Count = 200
		p.MinRadius = 10
		p.MaxRadius = 20
	}
	return p
}

// withDefaults fills zero fields from DefaultParams(a). Slices are copied so the result never
// aliases caller-owned memory.
func (p Params) withDefaults(a Archetype) Params {
	d := DefaultParams(a)
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Placement.Scale == 0 {
		p.Placement.Scale = d.Placement.Scale
	}
	if p.Color == "" {
		p.Color = d.Color
	}
	if len(p.LayerSizes) == 0 {
		p.LayerSizes = d.LayerSizes
	}
	p.LayerSizes = append([]int(nil), p.LayerSizes...)
	p.LayerSpacing = orF(p.LayerSpacing, d.LayerSpacing)
	p.NodeSpacing = orF(p.NodeSpacing, d.NodeSpacing)
	p.Depth = orI(p.Depth, d.Depth)
	p.Branching = orI(p.Branching, d.Branching)
	p.LeafLimit = orI(p.LeafLimit, d.LeafLimit)
	p.LevelSpacing = orF(p.LevelSpacing, d.LevelSpacing)
	p.SiblingSpacing = orF(p.SiblingSpacing, d.SiblingSpacing)
	p.Top = orP(p.Top, d.Top)
	if len(p.Blocks) == 0 {
		p.Blocks = d.Blocks
	}
	p.Blocks = append([]int(nil), p.Blocks...)
	p.BlockSpacing = orF(p.BlockSpacing, d.BlockSpacing)
	p.PointCount = orI(p.PointCount, d.PointCount)
	if p.XMin == 0 && p.XMax == 0 {
		p.XMin, p.XMax = d.XMin, d.XMax
	}
	p.Slope = orP(p.Slope, d.Slope)
	p.Intercept = orP(p.Intercept, d.Intercept)
	p.Noise = orP(p.Noise, d.Noise)
	p.LineOverhang = orF(p.LineOverhang, d.LineOverhang)
	p.SampleRange = orF(p.SampleRange, d.SampleRange)
	p.SampleStep = orF(p.SampleStep, d.SampleStep)
	if len(p.Clusters) == 0 {
		p.Clusters = d.Clusters
	}
	p.Clusters = append([]ClusterParams(nil), p.Clusters...)
	p.Count = orI(p.Count, d.Count)
	p.MinRadius = orF(p.MinRadius, d.MinRadius)
	p.MaxRadius = orF(p.MaxRadius, d.MaxRadius)
	return p
}

// Float returns a pointer to v, for the optional Params fields.
func Float(v float32) *float32 { return &v }

// orP returns a fresh copy of v, or of def when v is nil. Nil stays nil when both are.
func orP(v, def *float32) *float32 {
	if v == nil {
		v = def
	}
	if v == nil {
		return nil
	}
	return Float(*v)
}

func orF(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}

func orI(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
