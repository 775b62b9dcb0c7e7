package heuristics

import (
	"sync"

	"golang.org/x/net/html/atom"
)

// standardTags is ordered by how often the tag shows up in crawled pages.
// Tags sharing a two-byte prefix with an earlier entry are left out because
// they could never win the dispatch slot.
var standardTags = []struct {
	tag   atom.Atom
	attrs string
}{
	{atom.A, "href,target,rel,title,class,id,name,style,onclick"},
	{atom.Div, "class,id,style,align"},
	{atom.Span, "class,id,style"},
	{atom.P, "class,align,style"},
	{atom.Img, "src,alt,width,height,border,class,title"},
	{atom.Li, "class,id"},
	{atom.Td, "class,width,align,valign,colspan,height,style,bgcolor"},
	{atom.Tr, "class,valign,align,bgcolor"},
	{atom.Br, "clear"},
	{atom.Table, "width,border,cellpadding,cellspacing,class,align,id"},
	{atom.Script, "src,type,language,async,defer"},
	{atom.Meta, "name,content,http-equiv,charset,property"},
	{atom.Input, "type,name,value,id,size,checked"},
	{atom.Form, "action,method,name,id,enctype"},
	{atom.Option, "value,selected"},
	{atom.B, ""},
	{atom.I, "class"},
	{atom.H1, "class,id"},
	{atom.H2, "class,id"},
	{atom.H3, "class,id"},
	{atom.Ul, "class,id"},
	{atom.Ol, "class,id,start"},
	{atom.Iframe, "src,width,height,frameborder,name"},
	{atom.Style, "type,media"},
	{atom.Em, ""},
	{atom.Html, "lang,xmlns"},
	{atom.Head, ""},
	{atom.Body, "class,onload,bgcolor"},
	{atom.Title, ""},
	{atom.Nav, "class,id"},
	{atom.Section, "class,id"},
	{atom.Button, "type,class,id,name,onclick"},
	{atom.Label, "for,class"},
	{atom.Textarea, "name,rows,cols,id"},
	{atom.Th, "class,width,align,colspan"},
	{atom.Tbody, ""},
	{atom.Noscript, ""},
	{atom.Center, ""},
	{atom.Small, "class"},
	{atom.Hr, "class,size,width"},
	{atom.Dd, ""},
	{atom.Dt, ""},
	{atom.Dl, "class"},
	{atom.Pre, "class"},
	{atom.Code, "class"},
	{atom.U, ""},
	{atom.Sup, ""},
	{atom.Area, "shape,coords,href,alt"},
	{atom.Base, "href,target"},
	{atom.Main, "class,id"},
	{atom.Object, "data,type,width,height"},
	{atom.Param, "name,value"},
	{atom.Abbr, "title"},
	{atom.Blockquote, "cite,class"},
	{atom.Cite, ""},
	{atom.Caption, ""},
	{atom.Aside, "class,id"},
	{atom.Svg, "width,height,viewbox,xmlns,class"},
}

// Standard returns the process-wide Matcher preloaded with common HTML tags.
// It is built on first use and must be treated as read-only.
var Standard = sync.OnceValue(func() *Matcher {
	m := New()
	for _, t := range standardTags {
		m.Register(t.tag.String(), t.attrs)
	}
	return m
})
