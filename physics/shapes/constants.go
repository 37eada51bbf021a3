package shapes

// PolygonRadius is the thin "skin" every polygon carries so that
// polygon-polygon contact generation has numerically well-conditioned
// normals even at near-zero separation. Mirrors Box2D-family engines'
// b2_polygonRadius.
const PolygonRadius = 2.0 * linearSlop

const linearSlop = 0.005

// MaxPolygonVertices bounds the vertex count of a convex polygon.
const MaxPolygonVertices = 8
