package order

import "restaurant/application/usecase"

type CheckoutErrorKind string

const (
	CheckoutCartNotFound          CheckoutErrorKind = "CART_NOT_FOUND"
	CheckoutEmptyCart             CheckoutErrorKind = "EMPTY_CART"
	CheckoutAlreadyHasActiveOrder CheckoutErrorKind = "ALREADY_HAS_ACTIVE_ORDER"
	CheckoutInvalidAddress        CheckoutErrorKind = "INVALID_ADDRESS"
)

type CheckoutError = usecase.Error[CheckoutErrorKind]

// ChangeStateErrorKind is shared by pay, confirm, complete and cancel.
type ChangeStateErrorKind string

const (
	OrderNotFound     ChangeStateErrorKind = "ORDER_NOT_FOUND"
	InvalidOrderState ChangeStateErrorKind = "INVALID_ORDER_STATE"
)

type ChangeStateError = usecase.Error[ChangeStateErrorKind]

type GetOrderErrorKind string

const GetOrderNotFound GetOrderErrorKind = "ORDER_NOT_FOUND"

type GetOrderError = usecase.Error[GetOrderErrorKind]
