package models

// Route 用户问题的意图分类编号
type Route int

// 七种意图分类常量
const (
	RouteFoodOrdering          Route = 1 // 点餐
	RouteProductQuery          Route = 2 // 产品查询
	RouteEventQuery            Route = 3 // 活动查询
	RouteShopQuery             Route = 4 // 门市查询
	RouteProductRecommendation Route = 5 // 产品推荐
	RouteCorporateInformation  Route = 6 // 企业信息
	RouteOthers                Route = 7 // 其他
)

// routeLabels 意图编号到标签的只读映射表，启动后不再修改
var routeLabels = map[Route]string{
	RouteFoodOrdering:          "Food Ordering",
	RouteProductQuery:          "Product Query",
	RouteEventQuery:            "Event Query",
	RouteShopQuery:             "Shop Query",
	RouteProductRecommendation: "Product Recommendation",
	RouteCorporateInformation:  "Corporate Information",
	RouteOthers:                "Others",
}

// Valid 判断编号是否在1-7范围内
func (r Route) Valid() bool {
	_, ok := routeLabels[r]
	return ok
}

// Label 返回意图编号对应的标签
func (r Route) Label() string {
	return routeLabels[r]
}

// Routes 返回全部意图编号，按编号升序
func Routes() []Route {
	return []Route{
		RouteFoodOrdering,
		RouteProductQuery,
		RouteEventQuery,
		RouteShopQuery,
		RouteProductRecommendation,
		RouteCorporateInformation,
		RouteOthers,
	}
}
