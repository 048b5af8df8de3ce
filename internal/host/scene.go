package host

import (
	"fmt"

	"github.com/Faultbox/scene-export/pkg/formats"
	"github.com/Faultbox/scene-export/pkg/math"
)

// SceneDescriptor extracts the typed scene records from the dump.
//
// Objects with a non-empty "type" property become scene objects named by
// that type. The object flagged "is_collision_mesh" is the collision proxy;
// its "collision_path" (if any) becomes the descriptor's collision path.
func (d *Dump) SceneDescriptor() (*formats.SceneDescriptor, error) {
	desc := &formats.SceneDescriptor{Objects: []formats.SceneObject{}}
	var proxy *Object

	for i := range d.Objects {
		obj := &d.Objects[i]

		typ, ok, err := stringProp(obj, PropType)
		if err != nil {
			return nil, err
		}
		if ok && typ != "" {
			rec, err := sceneObject(obj, typ)
			if err != nil {
				return nil, err
			}
			desc.Objects = append(desc.Objects, rec)
		}

		flagged, err := boolProp(obj, PropIsCollisionMesh)
		if err != nil {
			return nil, err
		}
		if flagged {
			if proxy != nil {
				return nil, fmt.Errorf("%w: %q and %q", ErrMultipleCollisionProxies, proxy.Name, obj.Name)
			}
			proxy = obj
		}
	}

	if proxy != nil {
		path, _, err := stringProp(proxy, PropCollisionPath)
		if err != nil {
			return nil, err
		}
		desc.CollisionPath = path
	}

	return desc, nil
}

func sceneObject(obj *Object, typ string) (formats.SceneObject, error) {
	rec := formats.SceneObject{Name: typ, Rotation: math.QuatIdentity()}

	if obj.Location != nil {
		pos, err := vec3(obj.Location)
		if err != nil {
			return formats.SceneObject{}, fmt.Errorf("%w: object %q location: %v", ErrInvalidDump, obj.Name, err)
		}
		rec.Position = pos
	}

	switch {
	case obj.RotationQuaternion != nil:
		q := obj.RotationQuaternion
		rec.Rotation = math.Quat{X: q.X, Y: q.Y, Z: q.Z, W: q.W}
		if !rec.Rotation.IsFinite() {
			return formats.SceneObject{}, fmt.Errorf("%w: object %q rotation: non-finite quaternion", ErrInvalidDump, obj.Name)
		}
	case obj.RotationEuler != nil:
		e, err := vec3(obj.RotationEuler)
		if err != nil {
			return formats.SceneObject{}, fmt.Errorf("%w: object %q rotation: %v", ErrInvalidDump, obj.Name, err)
		}
		rec.Rotation = math.QuatFromEulerXYZ(e.X, e.Y, e.Z)
	}

	return rec, nil
}

// stringProp reads a string custom property. ok is false when the property
// is absent.
func stringProp(obj *Object, key string) (string, bool, error) {
	v, ok := obj.Properties[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, fmt.Errorf("%w: object %q property %q must be a string, got %T", ErrInvalidDump, obj.Name, key, v)
	}
	return s, true, nil
}

// boolProp reads a flag property. Host flags are often stored as 0/1
// integers, so non-zero numbers count as set.
func boolProp(obj *Object, key string) (bool, error) {
	v, ok := obj.Properties[key]
	if !ok || v == nil {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case float64:
		return b != 0, nil
	default:
		return false, fmt.Errorf("%w: object %q property %q must be a flag, got %T", ErrInvalidDump, obj.Name, key, v)
	}
}
