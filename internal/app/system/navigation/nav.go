package navigation

import "strings"

// Item is one sidebar entry. Groups carry Children and no page of their own.
type Item struct {
	To       string
	Icon     string
	Label    string
	Badge    int
	Children []Item
}

// Node is an Item resolved against the current path.
type Node struct {
	Item
	Active   bool
	Open     bool
	Children []Node
}

// Sidebar is the console's navigation tree, in display order.
var Sidebar = []Item{
	{To: "/dashboard", Icon: "layout-dashboard", Label: "Dashboard"},
	{To: "/church-structure", Icon: "church", Label: "Church Structure", Children: []Item{
		{To: "/church-structure/conferences", Label: "Conferences"},
		{To: "/church-structure/districts", Label: "Districts"},
		{To: "/church-structure/societies", Label: "Local Societies"},
	}},
	{To: "/members", Icon: "users", Label: "Members", Children: []Item{
		{To: "/members/clergy", Label: "Clergy"},
		{To: "/members/lay-officers", Label: "Lay Officers"},
		{To: "/members/staff", Label: "Staff"},
	}},
	{To: "/finance", Icon: "wallet", Label: "Finance", Children: []Item{
		{To: "/finance/collections", Label: "Collections"},
		{To: "/finance/payments", Label: "Payments"},
		{To: "/finance/reports", Label: "Reports"},
	}},
	{To: "/administration", Icon: "briefcase", Label: "Administration", Children: []Item{
		{To: "/administration/hr", Label: "HR"},
		{To: "/administration/memos", Label: "Memos"},
		{To: "/administration/documents", Label: "Documents"},
		{To: "/administration/bulk-sms", Label: "Bulk SMS"},
	}},
	{To: "/events", Icon: "calendar", Label: "Events & Calendar"},
	{To: "/reports", Icon: "bar-chart-3", Label: "Reports"},
	{To: "/users", Icon: "user-cog", Label: "Users & Roles"},
	{To: "/settings", Icon: "settings", Label: "Settings"},
}

// IsActive reports whether path is to or lies beneath it.
func IsActive(path, to string) bool {
	return path == to || strings.HasPrefix(path, to+"/")
}

// Build resolves items against path. A group is open when any child is active.
func Build(items []Item, path string) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		n := Node{Item: it, Active: IsActive(path, it.To)}
		if len(it.Children) > 0 {
			n.Children = Build(it.Children, path)
			for _, c := range n.Children {
				if c.Active {
					n.Open = true
					break
				}
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Href is where a node links to. When the sidebar is collapsed a group has
// no room for its children, so it links to the first one.
func (n Node) Href() string {
	if len(n.Children) > 0 {
		return n.Children[0].To
	}
	return n.To
}
