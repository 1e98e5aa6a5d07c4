package routing

import "math"

// DefaultResolution is the arc-length sampling interval in coordinate
// degrees. The original dataset documentation framed this as "100 meters",
// but 0.001 degrees is not a fixed metric distance (1 degree of latitude is
// roughly 111 km and longitude shrinks with latitude). The degree-space
// interval is kept deliberately so resampling stays consistent with the
// field's degree-space distances; it is a documented approximation, not a
// meters guarantee.
const DefaultResolution = 0.001

// Resample walks the polyline and returns n+1 points at uniform arc-length
// fractions, where n = floor(L / resolution) and L is the total Euclidean
// path length in degree space. The first and last output points equal the
// polyline's endpoints. Routes shorter than the resolution yield exactly the
// two endpoints, guarding the i/n division that would otherwise be undefined.
//
// Geometry vertices are (lon, lat); output points are materialized eagerly.
func Resample(geometry [][2]float64, resolution float64) []Point {
	if len(geometry) == 0 {
		return nil
	}
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	first := Point{Lat: geometry[0][1], Lon: geometry[0][0]}
	if len(geometry) == 1 {
		return []Point{first}
	}
	last := Point{Lat: geometry[len(geometry)-1][1], Lon: geometry[len(geometry)-1][0]}

	total := pathLength(geometry)
	n := int(math.Floor(total / resolution))
	if n == 0 {
		return []Point{first, last}
	}

	points := make([]Point, 0, n+1)
	points = append(points, first)
	for i := 1; i < n; i++ {
		points = append(points, pointAtLength(geometry, total*float64(i)/float64(n)))
	}
	points = append(points, last)
	return points
}

func pathLength(geometry [][2]float64) float64 {
	var total float64
	for i := 1; i < len(geometry); i++ {
		total += segmentLength(geometry[i-1], geometry[i])
	}
	return total
}

// pointAtLength interpolates the point at the given accumulated arc length,
// walking segments until the target falls inside one.
func pointAtLength(geometry [][2]float64, target float64) Point {
	var walked float64
	for i := 1; i < len(geometry); i++ {
		seg := segmentLength(geometry[i-1], geometry[i])
		if walked+seg >= target && seg > 0 {
			frac := (target - walked) / seg
			return Point{
				Lat: geometry[i-1][1] + frac*(geometry[i][1]-geometry[i-1][1]),
				Lon: geometry[i-1][0] + frac*(geometry[i][0]-geometry[i-1][0]),
			}
		}
		walked += seg
	}
	end := geometry[len(geometry)-1]
	return Point{Lat: end[1], Lon: end[0]}
}

func segmentLength(a, b [2]float64) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	return math.Sqrt(dx*dx + dy*dy)
}
