package text

import "github.com/Versifine/chatnbt/internal/nbt"

// absentOrShape explains why a typed getter found nothing: the field is
// missing, or it holds a tag of another kind.
func absentOrShape(c *nbt.Compound, owner, field string, expected byte) error {
	n, ok := c.Get(field)
	if !ok {
		return missingField(owner, field)
	}
	return invalidShape(field, expected, n)
}

func requireString(c *nbt.Compound, owner, field string) (string, error) {
	if s, ok := c.GetString(field); ok {
		return s, nil
	}
	return "", absentOrShape(c, owner, field, nbt.TagString)
}

// optionalString returns nil when field is absent. A present empty string
// is kept.
func optionalString(c *nbt.Compound, field string) (*string, error) {
	if s, ok := c.GetString(field); ok {
		return &s, nil
	}
	if !c.Has(field) {
		return nil, nil
	}
	return nil, absentOrShape(c, "", field, nbt.TagString)
}

func requireInt(c *nbt.Compound, owner, field string) (int32, error) {
	if v, ok := c.GetInt(field); ok {
		return v, nil
	}
	return 0, absentOrShape(c, owner, field, nbt.TagInt)
}

func requireCompound(c *nbt.Compound, owner, field string) (*nbt.Compound, error) {
	if sub, ok := c.GetCompound(field); ok {
		return sub, nil
	}
	return nil, absentOrShape(c, owner, field, nbt.TagCompound)
}

// optionalCompound returns nil when field is absent.
func optionalCompound(c *nbt.Compound, field string) (*nbt.Compound, error) {
	if sub, ok := c.GetCompound(field); ok {
		return sub, nil
	}
	if !c.Has(field) {
		return nil, nil
	}
	return nil, absentOrShape(c, "", field, nbt.TagCompound)
}

func optionalList(c *nbt.Compound, field string) ([]*nbt.Node, error) {
	if items, ok := c.GetList(field); ok {
		return items, nil
	}
	if !c.Has(field) {
		return nil, nil
	}
	return nil, absentOrShape(c, "", field, nbt.TagList)
}

func requireKey(c *nbt.Compound, owner, field string) (Key, error) {
	s, err := requireString(c, owner, field)
	if err != nil {
		return Key{}, err
	}
	return ParseKey(s)
}
