package mongoclient

import (
	"errors"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var ErrNotStruct = errors.New("bson source is not a struct")

// MakeBsonM turns a bson tagged struct, or a pointer to one, into a selector
// or patch. Zero fields and unexported fields are left out, non-nil pointers
// are stored by value.
func MakeBsonM(src interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(src))
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	typ := val.Type()
	m := bson.M{}
	for i := 0; i < val.NumField(); i++ {
		sf := typ.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		tag, err := bsoncodec.DefaultStructTagParser(sf)
		if err != nil {
			return nil, err
		}
		field := val.Field(i)
		if tag.Skip || field.IsZero() {
			continue
		}
		if field.Kind() == reflect.Ptr {
			field = field.Elem()
		}
		m[tag.Name] = field.Interface()
	}
	return m, nil
}
