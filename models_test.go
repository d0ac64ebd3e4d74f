package tgskema_test

import tgskema "github.com/reoring/tgskema"

// point and shape are small models shared by the engine tests.
type point struct{ tgskema.Object }

func newPoint() tgskema.Model { return new(point) }

var pointSchema = tgskema.NewSchema("Point").
	Field("x").Requires(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("y").Accepts(tgskema.Integer()).Scalar(tgskema.KindInteger).
	Field("label").Accepts(tgskema.String()).Accepts(tgskema.Integer()).Passthrough().
	MustBuild()

func (*point) Schema() *tgskema.Schema { return pointSchema }

type shape struct{ tgskema.Object }

func newShape() tgskema.Model { return new(shape) }

var shapeSchema = tgskema.NewSchema("Shape").
	Field("name").Requires(tgskema.String()).Scalar(tgskema.KindString).
	Field("visible").Accepts(tgskema.Boolean()).Scalar(tgskema.KindBoolean).
	Field("origin").Accepts(tgskema.ObjectOf(newPoint)).Object(newPoint).
	Field("points").Accepts(tgskema.ListOf(tgskema.ObjectOf(newPoint))).Objects(newPoint).
	Field("grid").Accepts(tgskema.ListOf(tgskema.ListOf(tgskema.ObjectOf(newPoint)))).Grid(newPoint).
	Field("meta").Accepts(tgskema.ObjectOf(newPoint)).Object(newPoint).JSONText().
	MustBuild()

func (*shape) Schema() *tgskema.Schema { return shapeSchema }

func mkPoint(x int64) *point {
	p := new(point)
	p.Set("x", x)
	return p
}
