package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T      float64 // Parameter t along the ray
	Point  Vec3    // Point of intersection
	Normal Vec3    // Outward unit normal at the intersection
}

// Hittable is anything a ray can be tested against.
// Hit returns the nearest intersection with tMin < t < tMax, or (nil, false).
type Hittable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}
