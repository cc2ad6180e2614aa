package geometry

import "github.com/df07/go-diffuse-raytracer/pkg/core"

// HittableList is an ordered collection of objects tested as one.
// It is itself a core.Hittable, so lists can be nested.
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list holding the given objects in order
func NewHittableList(objects ...core.Hittable) *HittableList {
	list := &HittableList{Objects: make([]core.Hittable, 0, len(objects))}
	list.Objects = append(list.Objects, objects...)
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Len returns the number of objects in the list
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest intersection among all objects.
// Each object is tested against the closest hit found so far, so the result
// does not depend on the order of Objects.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
