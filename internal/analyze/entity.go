package analyze

import (
	"fmt"
	"strings"

	"context-variants/internal/entity"
)

// Struct tags read from annotated structs.
const (
	TagWhenRequired = "when_required"
	TagWhenOptional = "when_optional"
	TagWhenBase     = "when_base"
	TagVariants     = "variants"

	// OptionNoDefaults in the variants tag opts a field out of the global
	// required/optional attribute overlays.
	OptionNoDefaults = "nodefaults"

	// overlaySeparator splits the tags of one overlay.
	overlaySeparator = ";"
)

// Entity converts the struct into an entity. Rule lines are joined with
// newlines; overlays come from the when_* struct tags.
func (s *StructInfo) Entity() (*entity.Entity, error) {
	ent := &entity.Entity{
		Name:       s.ID.Name,
		TypeParams: s.TypeParams,
		Origin:     s.Position,
		Rules:      strings.Join(s.Rules, "\n"),
		Fields:     make([]entity.FieldDescriptor, 0, len(s.Fields)),
	}

	for i := range s.Fields {
		f := &s.Fields[i]

		fd := entity.FieldDescriptor{
			Name:     f.Name,
			Type:     f.Type,
			Optional: f.IsOptional(),
		}

		var err error

		for _, slot := range []struct {
			tag string
			dst *entity.Overlay
		}{
			{TagWhenBase, &fd.BaseAttrs},
			{TagWhenRequired, &fd.RequiredAttrs},
			{TagWhenOptional, &fd.OptionalAttrs},
		} {
			*slot.dst, err = entity.ParseOverlay(f.GetTag(slot.tag), overlaySeparator)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: tag %s: %w", s.ID.Name, f.Name, slot.tag, err)
			}
		}

		for opt := range strings.SplitSeq(f.GetTag(TagVariants), ",") {
			switch strings.TrimSpace(opt) {
			case "":
			case OptionNoDefaults:
				fd.SkipDefaultAttrs = true
			default:
				return nil, fmt.Errorf("%s.%s: unknown %s option %q", s.ID.Name, f.Name, TagVariants, opt)
			}
		}

		ent.Fields = append(ent.Fields, fd)
	}

	return ent, nil
}

// LoadEntities loads the packages and converts every annotated struct.
func (a *Analyzer) LoadEntities(patterns ...string) ([]*entity.Entity, error) {
	structs, err := a.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Entity, 0, len(structs))

	for _, s := range structs {
		ent, err := s.Entity()
		if err != nil {
			return nil, err
		}

		out = append(out, ent)
	}

	return out, nil
}
